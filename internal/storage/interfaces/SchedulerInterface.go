package interfaces

type SchedulerInterface interface {
	Init()
	Stop()
	Restore() error
	Persist() error
	// Close stops the ticker and releases the compressor. Persist must not be
	// called afterwards.
	Close()
}
