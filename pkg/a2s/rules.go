package a2s

// TruncatedRuleValue marks a rule whose name survived but whose value was
// clipped by the server before the terminator. Responses sometimes arrive
// shortened by upstream MTU or fragmentation issues, so the decode degrades
// instead of failing.
const TruncatedRuleValue = "N/A - packet cut off"

// parseRules decodes a reassembled A2S_RULES response packet into a
// name-to-value map. A repeated name keeps the last value, matching the
// wire format, which never deduplicates. Rules whose name was clipped are
// dropped; rules whose value was clipped are kept with TruncatedRuleValue.
func parseRules(c *Cursor) (map[string]string, error) {
	if _, err := c.Long(); err != nil { // marker
		return nil, err
	}
	if _, err := c.Byte(); err != nil { // response header
		return nil, err
	}

	count, err := c.Short()
	if err != nil {
		return nil, err
	}

	total := int(count)
	rules := make(map[string]string, max(total, 0))
	for i := 0; i < total; i++ {
		name, err := c.String()
		if err != nil {
			continue
		}

		value, err := c.String()
		if err != nil {
			rules[name] = TruncatedRuleValue
			continue
		}
		rules[name] = value
	}

	return rules, nil
}
