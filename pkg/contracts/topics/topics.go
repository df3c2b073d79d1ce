package topics

const (
	// Snapshots de enriquecimento produzidos pelo aggregator-service
	EnrichmentSnapshots = "event_enrichment_snapshots"

	// DLQ de snapshots que o worker não conseguiu persistir
	EnrichmentSnapshotsDLQ = "event_enrichment_snapshots_dlq"
)
