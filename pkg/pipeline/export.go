package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/crossflow/pkg/crossflow"
	"github.com/matzehuels/crossflow/pkg/errors"
	cfio "github.com/matzehuels/crossflow/pkg/io"
	"github.com/matzehuels/crossflow/pkg/render/dot"
)

// Export encodes opt in every requested format. DOT output is parsed with
// Graphviz before it is returned.
func Export(ctx context.Context, opt crossflow.Option, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte

		switch format {
		case FormatJSON:
			var buf bytes.Buffer
			if err := cfio.WriteOption(&buf, opt); err != nil {
				return nil, fmt.Errorf("export %s: %w", format, err)
			}
			data = buf.Bytes()
		case FormatDOT:
			s := dot.ToDOT(opt, dot.Options{Labels: opts.DOTLabels})
			if err := dot.Validate(ctx, s); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "generated DOT does not parse")
			}
			data = []byte(s)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported export format: %s", format)
		}

		artifacts[format] = data
	}

	return artifacts, nil
}
