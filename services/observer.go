package services

import "github.com/andrrresj/automotive-market-dashboard/utils"

// StageEvent reports the row count of a dataset after a pipeline stage.
type StageEvent struct {
	Dataset string
	Stage   string
	Rows    int
}

// Observer receives progress events from the pipeline.
type Observer interface {
	Observe(ev StageEvent)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(ev StageEvent)

func (f ObserverFunc) Observe(ev StageEvent) { f(ev) }

type nopObserver struct{}

func (nopObserver) Observe(StageEvent) {}

// LogObserver writes every event to the logger.
func LogObserver(logger *utils.Logger) Observer {
	return ObserverFunc(func(ev StageEvent) {
		logger.Info("[%s] %-14s %d rows", ev.Dataset, ev.Stage, ev.Rows)
	})
}

func orNop(o Observer) Observer {
	if o == nil {
		return nopObserver{}
	}
	return o
}
