// Package taxonomy maps editorial names onto WordPress site objects. It
// resolves requested author names to user accounts, creating accounts when
// no match exists, and matches spreadsheet category labels against the
// site's category list with progressively looser comparisons.
package taxonomy
