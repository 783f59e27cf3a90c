package gconf

import (
	"reflect"

	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
	"github.com/iov-one/tokendrop/x"
)

// OwnedConfig is a configuration that names who may change it.
type OwnedConfig interface {
	Configuration
	GetOwner() weave.Address
}

// InitAdminFunc returns the address allowed to create a configuration that
// was not provided in genesis.
type InitAdminFunc func(weave.ReadOnlyKVStore) (weave.Address, error)

// UpdateConfigurationHandler applies a configuration patch. The message
// must carry a Patch field of the configuration type. Non zero fields of
// the patch replace the stored values.
type UpdateConfigurationHandler struct {
	pkg       string
	config    OwnedConfig
	auth      x.Authenticator
	initAdmin InitAdminFunc
}

var _ weave.Handler = UpdateConfigurationHandler{}

// NewUpdateConfigurationHandler returns a handler for the configuration of
// pkg. config is the instance the stored value is loaded into.
//
// While a configuration exists its owner must sign. Without one, initAdmin
// names the signer allowed to create it. A nil initAdmin means a missing
// configuration can never be created by a message.
func NewUpdateConfigurationHandler(pkg string, config OwnedConfig, auth x.Authenticator, initAdmin InitAdminFunc) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:       pkg,
		config:    config,
		auth:      auth,
		initAdmin: initAdmin,
	}
}

func (h UpdateConfigurationHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if err := h.apply(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	if err := h.apply(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

func (h UpdateConfigurationHandler) apply(ctx weave.Context, db weave.KVStore, tx weave.Tx) error {
	if err := h.authorize(ctx, db); err != nil {
		return err
	}
	msg, err := tx.GetMsg()
	if err != nil {
		return err
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	p, err := patchOf(msg)
	if err != nil {
		return err
	}
	if err := patch(h.config, p); err != nil {
		return err
	}
	return Save(db, h.pkg, h.config)
}

// authorize loads the current configuration into h.config and checks the
// signer allowed to change it.
func (h UpdateConfigurationHandler) authorize(ctx weave.Context, db weave.ReadOnlyKVStore) error {
	err := Load(db, h.pkg, h.config)
	if err == nil {
		return x.RequireSigner(ctx, h.auth, h.config.GetOwner(), "configuration owner")
	}
	if !errors.ErrNotFound.Is(err) {
		return err
	}
	// Drop whatever a previous message left in the shared instance.
	c := reflect.ValueOf(h.config).Elem()
	c.Set(reflect.Zero(c.Type()))

	if h.initAdmin == nil {
		return errors.Wrapf(errors.ErrUnauthorized, "%s configuration cannot be created", h.pkg)
	}
	admin, err := h.initAdmin(db)
	if err != nil {
		return errors.Wrap(err, "init admin")
	}
	return x.RequireSigner(ctx, h.auth, admin, "init admin")
}

// patchOf returns the Patch field of msg.
func patchOf(msg weave.Msg) (OwnedConfig, error) {
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrMsg, "%T is not a configuration patch", msg)
	}
	field := v.Elem().FieldByName("Patch")
	if !field.IsValid() || field.Kind() != reflect.Ptr {
		return nil, errors.Wrapf(errors.ErrMsg, "%T has no Patch field", msg)
	}
	if field.IsNil() {
		return nil, errors.Field("Patch", errors.ErrEmpty, "required")
	}
	p, ok := field.Interface().(OwnedConfig)
	if !ok {
		return nil, errors.Field("Patch", errors.ErrType, "not a configuration")
	}
	return p, nil
}

// patch copies every non zero field of p into config. Both must point to
// the same struct type.
func patch(config, p OwnedConfig) error {
	dst := reflect.ValueOf(config)
	src := reflect.ValueOf(p)
	if dst.Type() != src.Type() {
		return errors.Wrapf(errors.ErrType, "cannot patch %T with %T", config, p)
	}
	dst, src = dst.Elem(), src.Elem()
	for i := 0; i < src.NumField(); i++ {
		f := src.Field(i)
		if reflect.DeepEqual(f.Interface(), reflect.Zero(f.Type()).Interface()) {
			continue
		}
		dst.Field(i).Set(f)
	}
	return nil
}
