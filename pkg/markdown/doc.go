// Package markdown renders content files to sanitized HTML.
// Files may start with a YAML frontmatter block delimited by "---" lines.
package markdown
