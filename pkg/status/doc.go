// Package status serves the relay's health and metrics endpoints.
package status
