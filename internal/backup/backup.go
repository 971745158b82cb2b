// Package backup moves hub configuration between the configuration service
// and local files. Exports carry real values so a restore round-trips;
// masking is a display concern and lives in Mask.
package backup

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/hearthview/hearth/internal/api"
	"github.com/hearthview/hearth/internal/errors"
)

// Export fetches the hub's configuration and writes it to w as indented
// JSON, stamped with the export time.
func Export(ctx context.Context, client *api.Client, w io.Writer) error {
	doc, err := client.ConfigDocument(ctx)
	if err != nil {
		return err
	}
	doc.ExportedAt = time.Now().UTC()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrBackup, "Cannot encode the config export", "")
	}
	data = append(data, '\n')

	if _, err := w.Write(data); err != nil {
		return errors.WrapWithCode(err, errors.ErrBackup, "Cannot write the config export", "")
	}
	return nil
}

// Decode parses and validates a config export. Anything malformed is
// rejected before it can reach the hub.
func Decode(r io.Reader) (*api.ConfigDocument, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrBackup, "Cannot read the config file", "")
	}

	var doc api.ConfigDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrBackup,
			"That file is not a hearth config export",
			"Expected the JSON shape 'hearth config export' produces")
	}
	if err := Validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks the structural invariants of a config document.
func Validate(doc *api.ConfigDocument) error {
	if doc == nil {
		return errors.New(errors.ErrBackup, "Config document is empty", "")
	}
	if doc.Version < 1 {
		return errors.New(errors.ErrBackup,
			"Config export has no version, so it can't be restored safely",
			"Re-export from a current hub with 'hearth config export'")
	}
	if len(doc.Fields) == 0 {
		return errors.New(errors.ErrBackup,
			"Config export contains no fields",
			"An empty restore would wipe the hub config, refusing")
	}

	seen := make(map[string]bool, len(doc.Fields))
	for _, f := range doc.Fields {
		if f.Key == "" {
			return errors.New(errors.ErrBackup, "Config export has a field with no key", "")
		}
		if seen[f.Key] {
			return errors.New(errors.ErrBackup,
				"Config export lists '"+f.Key+"' twice",
				"Fix the duplicate before restoring")
		}
		seen[f.Key] = true
	}
	return nil
}

// Restore validates doc and pushes it to the hub's configuration service.
// Documents read from a file go through Decode first; Restore re-checks so
// a hand-built document gets the same screening.
func Restore(ctx context.Context, client *api.Client, doc *api.ConfigDocument) error {
	if err := Validate(doc); err != nil {
		return err
	}
	return client.PushConfig(ctx, doc)
}
