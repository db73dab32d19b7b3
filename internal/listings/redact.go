package listings

// Redact strips internal provenance fields from every listing. Listings left
// with no fields disappear, then cinemas left with no listings disappear, so
// the response never carries empty entries. Non-record listing values are
// skipped. Always the last pipeline stage; idempotent on clean data.
func (s *Service) Redact(aggregate Aggregate) Aggregate {
	redacted := make(Aggregate, len(aggregate))

	for cinema, collection := range aggregate {
		cleaned := make(Collection, len(collection))
		for title, value := range collection {
			record, ok := value.(map[string]any)
			if !ok {
				s.log.Debug().Str("cinema", cinema).Str("title", title).
					Msg("skipping non-record listing during redaction")
				continue
			}

			clean := make(map[string]any, len(record))
			for field, v := range record {
				if _, internal := redactedFields[field]; internal {
					continue
				}
				clean[field] = v
			}
			if len(clean) > 0 {
				cleaned[title] = clean
			}
		}
		if len(cleaned) > 0 {
			redacted[cinema] = cleaned
		}
	}

	return redacted
}
