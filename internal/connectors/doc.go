// Package connectors holds the clients for the sites casedocs reads cases from.
// Each subpackage implements the driven portal and document ports for one site.
package connectors
