/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each extension keeps a single configuration entity under its package name.
The entity is loaded from the "conf" section of the genesis file and can be
updated later by its owner using a message that carries a patch of the
configuration.
*/
package gconf
