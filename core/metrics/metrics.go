package metrics

const (
	SummariesComputedH = "The total number of summaries computed"
	SummariesComputedN = "descstat_summaries_computed"
	SummariesMissingH  = "The total number of summaries rejected because of missing input"
	SummariesMissingN  = "descstat_summaries_missing_input"
	SummariesUnsortedH = "The total number of summaries whose input was declared sorted but was not"
	SummariesUnsortedN = "descstat_summaries_unsorted_input"

	ServerReqsReceivedH = "The total number of summary requests received via HTTP"
	ServerReqsReceivedN = "descstat_server_reqs_received"
	ServerReqsServedH   = "The total number of summary requests served via HTTP, by status code"
	ServerReqsServedN   = "descstat_server_reqs_served"
)
