// Package media turns a featured-image reference into an uploaded WordPress
// media item. It downloads the image from Google Drive or a plain URL,
// checks the format, uploads with bounded retries, and walks the operator
// through a fallback menu when the upload cannot succeed.
package media
