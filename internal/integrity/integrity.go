package integrity

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/opencontainers/go-digest"
)

// Checks a downloaded artifact against an expected "algorithm:hexdigest" pair.
//
// An empty checksum is an accepted risk: a warning is logged and the artifact
// is trusted as-is. Otherwise the named algorithm is computed over the full
// stream and a mismatch is reported as [ErrIntegrity]. A checksum that cannot
// be parsed, or that names an unregistered algorithm, fails before any bytes
// are read.
func Verify(r io.Reader, checksum string) error {
	if checksum == "" {
		slog.Warn("no source checksum specified, data integrity will not be verified")
		return nil
	}

	d, err := digest.Parse(checksum)
	if err != nil {
		return fmt.Errorf("invalid checksum %q: %w", checksum, err)
	}

	if !d.Algorithm().Available() {
		return fmt.Errorf("invalid checksum %q: algorithm %q is not supported", checksum, d.Algorithm())
	}

	verifier := d.Verifier()
	if _, err := io.Copy(verifier, r); err != nil {
		return fmt.Errorf("reading artifact: %w", err)
	}

	if !verifier.Verified() {
		return fmt.Errorf("%w: expected %s", ErrIntegrity, checksum)
	}

	return nil
}
