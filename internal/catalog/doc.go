// Package catalog holds the registered service tests and everything needed to
// turn a command-line selection into a concrete list of probe URLs: service
// filter validation, test options, placeholder expansion and the immutable
// endpoint registry.
package catalog
