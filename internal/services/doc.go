// Package services defines the shared error taxonomy and context annotation
// helpers consumed by the pipeline stages and external integrations.
package services
