package orm

// Model is implemented by every value stored in a bucket. Validate is
// called before each write, so no invalid model can be persisted.
type Model interface {
	Validate() error
}
