// Package report provides report generation and output functionality.
//
// This package contains writers for different output formats:
//   - SimpleWriter: the near and far tables for terminal display
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: Markdown with tables and a mermaid chart
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
