package out

import (
	settingsout "zenith/internal/modules/settings/port/out"
	"zenith/internal/platform/localstore"
)

var _ settingsout.KeyValueStore = (*localstore.Bolt)(nil)

func NewLocalStore(b *localstore.Bolt) settingsout.KeyValueStore {
	return b
}
