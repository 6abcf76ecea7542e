package compare

// CollectResults partitions comparator findings into hard failures and
// review flags. Relative order within each list follows the input order,
// which is the order reasons are surfaced to reviewers.
func CollectResults(results []Outcome) (failReasons, reviewReasons []ReviewReason) {
	for _, r := range results {
		switch r.Kind {
		case OutcomeFail:
			failReasons = append(failReasons, r.Reason)
		case OutcomeReview:
			reviewReasons = append(reviewReasons, r.Reason)
		}
	}
	return failReasons, reviewReasons
}
