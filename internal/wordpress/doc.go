// Package wordpress provides a REST client for the WordPress wp/v2 API
// using application-password basic auth. It covers the operations the
// publishing flow needs, namely user lookup and creation, category listing,
// media upload, and post creation with read-back.
package wordpress
