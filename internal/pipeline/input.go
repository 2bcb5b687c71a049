package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhillyerd/enmime"
)

// RosterPDF is one PDF payload obtained from an input path.
type RosterPDF struct {
	Name string
	Data []byte
}

// LoadRosterFiles reads one input path. A .pdf is used directly; a saved
// .eml message yields every PDF attachment it carries, so rosters forwarded
// by email can be fed in without unpacking them first.
func LoadRosterFiles(path string) ([]RosterPDF, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(strings.ToLower(path), ".eml") {
		return pdfAttachments(path, data)
	}
	return []RosterPDF{{Name: filepath.Base(path), Data: data}}, nil
}

func pdfAttachments(path string, raw []byte) ([]RosterPDF, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	out := []RosterPDF{}
	for _, att := range env.Attachments {
		filename := strings.TrimSpace(att.FileName)
		if filename == "" {
			filename = "attachment.pdf"
		}
		if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
			continue
		}
		out = append(out, RosterPDF{Name: filename, Data: att.Content})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no PDF attachments in %s", filepath.Base(path))
	}
	return out, nil
}
