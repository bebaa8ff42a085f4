package out

// KeyValueStore is the device-local string store.
type KeyValueStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	SetMany(entries map[string]string) error
	Clear() error
}
