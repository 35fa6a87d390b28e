package material

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// DomainTable is the domain-separation prefix for table fingerprints.
// The version suffix allows the encoding to change later.
const DomainTable = "matex/table/v1"

// Fingerprint returns a content hash of the table's records.
//
// Format: hex(SHA256(domain + 0x00 + canonical rows)). Strings are NFC
// normalised and floats use the shortest round-trip representation, so two
// tables with equal records in equal order always share a fingerprint,
// whatever their snapshot ids.
func (t Table) Fingerprint() string {
	h := sha256.New()
	h.Write([]byte(DomainTable))
	h.Write([]byte{0x00})
	h.Write(canonicalRows(t.rows))
	return hex.EncodeToString(h.Sum(nil))
}

// canonicalRows encodes rows as a JSON array of arrays with a fixed column
// order: [id, formula, band_gap, density, energy_above_hull, formation_energy].
func canonicalRows(rows []Record) []byte {
	buf := []byte{'['}
	for i, r := range rows {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, '[')
		buf = strconv.AppendQuote(buf, norm.NFC.String(r.ID))
		buf = append(buf, ',')
		buf = strconv.AppendQuote(buf, norm.NFC.String(r.Formula))
		for _, f := range Fields {
			buf = append(buf, ',')
			buf = strconv.AppendFloat(buf, f.Value(r), 'g', -1, 64)
		}
		buf = append(buf, ']')
	}
	return append(buf, ']')
}
