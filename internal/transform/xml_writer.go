package transform

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/yourorg/hr-field-resolver/internal/schemaregistry"
)

// xmlBatchSize is the emission batch for large tables, per §4.7 "above a
// threshold (~50,000 rows), XML emission writes in 1,000-row batches
// directly to a sink rather than accumulating a DOM". Since this writer
// never builds a DOM to begin with, batching here only bounds how much
// gets flushed to the staging buffer between checkpoints; output bytes
// never depend on the batch size.
const xmlBatchSize = 1000

// xmlRowTag renders the Eightfold wire-format row element name, e.g.
// "Employee" -> "EF_Employee" (§8 scenario 2's literal `<EF_Employee>`).
// The root list wrapper carries the same prefix.
func xmlRowTag(entity string) string { return "EF_" + entity }

// xmlFieldTag lowercases a canonical FieldDefinition.Name for XML, e.g.
// "EMAIL" -> "email". CSV output keeps the canonical uppercase name per
// §6 ("first row = target field names in schema order"); only the XML
// wire format uses the lowercase convention illustrated in §8's
// `<email_list>`/`<email>` example.
func xmlFieldTag(name string) string { return strings.ToLower(name) }

// writeXML emits the root `<{Entity}_List>` document by hand: no DOM,
// sequential writes, manual two-space indentation, escaping delegated to
// encoding/xml.EscapeText.
func writeXML(entity string, columns []schemaregistry.FieldDefinition, records [][]string) ([]byte, error) {
	var staging bytes.Buffer
	w := bufio.NewWriter(&staging)
	rowTag := xmlRowTag(entity)

	fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	fmt.Fprintf(w, "<%s_List>\n", rowTag)

	for batchStart := 0; batchStart < len(records); batchStart += xmlBatchSize {
		end := batchStart + xmlBatchSize
		if end > len(records) {
			end = len(records)
		}
		for _, rec := range records[batchStart:end] {
			if err := writeXMLRecord(w, rowTag, columns, rec); err != nil {
				return nil, err
			}
		}
		if err := w.Flush(); err != nil {
			return nil, err
		}
	}

	fmt.Fprintf(w, "</%s_List>\n", rowTag)
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return staging.Bytes(), nil
}

func writeXMLRecord(w *bufio.Writer, rowTag string, columns []schemaregistry.FieldDefinition, rec []string) error {
	fmt.Fprintf(w, "  <%s>\n", rowTag)
	for i, col := range columns {
		value := rec[i]
		tag := xmlFieldTag(col.Name)
		if col.SemanticType.IsList() {
			fmt.Fprintf(w, "    <%s_list>\n", tag)
			for _, v := range splitListCell(value, true) {
				fmt.Fprintf(w, "      <%s>", tag)
				if err := xml.EscapeText(w, []byte(v)); err != nil {
					return err
				}
				fmt.Fprintf(w, "</%s>\n", tag)
			}
			fmt.Fprintf(w, "    </%s_list>\n", tag)
			continue
		}
		fmt.Fprintf(w, "    <%s>", tag)
		if err := xml.EscapeText(w, []byte(value)); err != nil {
			return err
		}
		fmt.Fprintf(w, "</%s>\n", tag)
	}
	fmt.Fprintf(w, "  </%s>\n", rowTag)
	return nil
}

// countXMLRecords re-parses emitted XML and counts `<{Entity}>` children,
// backing the row-count invariant check (I1) per §4.7: "for XML, count
// <{Entity}> children after re-parsing the output".
func countXMLRecords(entity string, doc []byte) (int, error) {
	rowTag := xmlRowTag(entity)
	dec := xml.NewDecoder(bytes.NewReader(doc))
	count := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		if start, ok := tok.(xml.StartElement); ok && start.Name.Local == rowTag {
			count++
		}
	}
	return count, nil
}
