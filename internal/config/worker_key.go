package config

type WorkerKeyStruct struct {
	PersistResultsQueue     string
	PersistResultsDeadQueue string
}

var WorkerKey = &WorkerKeyStruct{
	PersistResultsQueue:     "persist_results_queue",
	PersistResultsDeadQueue: "persist_results_dead_queue",
}
