package notify

const (
	ScanLimit = scanLimit
	SeenLimit = seenLimit
)

// SeenCount is only safe to call once Run has returned.
func (n *NewOrderNotifier) SeenCount() int {
	return len(n.seen)
}
