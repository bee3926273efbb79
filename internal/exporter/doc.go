// Package exporter serializes cleaned record sets for download. The
// CSV form uses the normalized column set with a UTF-8 BOM so Excel
// opens it correctly; the XLSX form writes the same columns through
// excelize.
package exporter
