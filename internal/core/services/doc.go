// Package services implements the driving port interfaces.
// Services hold the scrape, ingest, search and question answering logic and
// reach the portal, storage and models only through driven ports.
//
// Services are pure Go with no CGO or external dependencies.
package services
