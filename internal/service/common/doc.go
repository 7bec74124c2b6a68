// Package common holds the setup and capture-gathering logic shared by
// the analysis services.
package common
