// Package defaults exposes the content baked into this build. The embedded file
// is the same artifact the publish flow commits, so a publish becomes the next
// deployment's defaults.
package defaults

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/khoahotran/portfolio/internal/codec"
	"github.com/khoahotran/portfolio/internal/domain/content"
)

//go:embed constants.ts
var constantsTS []byte

var (
	once     sync.Once
	snapshot content.Snapshot
	loadErr  error
)

// Load decodes the embedded constants once. Every call returns a fresh copy.
func Load() (content.Snapshot, error) {
	once.Do(func() {
		snapshot, loadErr = codec.TypeScript{}.Decode(constantsTS)
		if loadErr != nil {
			loadErr = fmt.Errorf("decode embedded defaults: %w", loadErr)
		}
	})
	if loadErr != nil {
		return content.Snapshot{}, loadErr
	}
	return content.Snapshot{LastUpdated: snapshot.LastUpdated, State: snapshot.State.Clone()}, nil
}

// MustLoad is Load for program start-up, where broken defaults are a build error.
func MustLoad() content.Snapshot {
	s, err := Load()
	if err != nil {
		panic(err)
	}
	return s
}
