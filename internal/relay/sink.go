package relay

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
)

// Marker heads every block the relay appends to a sink.
const Marker = "ChatGPT Response:"

// Trailer follows a successful completion when Format.Trailer is set, so
// the file is ready for the user's next turn.
const Trailer = "User Response"

// Console targets print to the console writer instead of a file.
const (
	ConsoleTarget = "console"
	StdoutTarget  = "-"
)

const sinkFilePerm = 0o644

// Format renders outcomes into sink blocks.
type Format struct {
	Trailer bool
}

// Render returns the block appended for o. Failures never carry the trailer.
func (f Format) Render(o Outcome) string {
	head := "\n\n" + Marker + "\n"
	if !o.Succeeded() {
		return head + o.Message
	}

	block := head + o.Text + "\n"
	if f.Trailer {
		block += "\n" + Trailer + "\n"
	}
	return block
}

// IsConsole reports whether target names the console rather than a file.
func IsConsole(target string) bool {
	return target == ConsoleTarget || target == StdoutTarget
}

// appendFile appends block to path, creating the file if needed. Existing
// content is never truncated.
func appendFile(fs afero.Fs, path, block string) (err error) {
	f, err := fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, sinkFilePerm)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if _, err := io.WriteString(f, block); err != nil {
		return fmt.Errorf("append %s: %w", path, err)
	}
	return nil
}
