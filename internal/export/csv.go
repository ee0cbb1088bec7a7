// Package export renders contact listings for download.
package export

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	types "github.com/yungbote/contactdesk/internal/domain"
)

const ContentType = "text/csv"

// Header is the fixed first row of every export.
var Header = []string{"ID", "First Name", "Last Name", "Email", "Phone", "Date Added"}

// WriteContactsCSV writes the header and one row per contact in the order
// given. Quoting follows RFC 4180.
func WriteContactsCSV(w io.Writer, contacts []*types.Contact) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, c := range contacts {
		if c == nil {
			continue
		}
		if err := cw.Write(Row(c)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ContactsCSV(contacts []*types.Contact) (string, error) {
	var buf bytes.Buffer
	if err := WriteContactsCSV(&buf, contacts); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func Row(c *types.Contact) []string {
	return []string{
		strconv.FormatUint(uint64(c.ID), 10),
		c.FirstName,
		c.LastName,
		c.Email,
		c.Phone,
		c.DateAdded(),
	}
}

// Filename names a download after the moment it was produced.
func Filename(at time.Time) string {
	return "contacts_export_" + at.Format("20060102_150405") + ".csv"
}
