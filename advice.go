package wealth

// AdviceContext returns the JSON text an advice generator embeds in its
// prompts: the record without its transactions, and the computed totals.
//
//	{"financial_data": {...}, "total_assets": 0, "total_liabilities": 0, "net_worth": 0}
func AdviceContext(r *Record) ([]byte, error) {
	if r == nil {
		r = &Record{}
	}
	n, err := NodeOf(r)
	if err != nil {
		return nil, err
	}
	data, err := n.without("transactions").MarshalJSON()
	if err != nil {
		return nil, err
	}

	var w jsonObjectWriter
	w.AppendRaw("financial_data", data)
	w.Append("total_assets", TotalAssets(r))
	w.Append("total_liabilities", TotalLiabilities(r))
	w.Append("net_worth", NetWorth(r))
	w.Optional("data_issues", Check(r))
	return w.MarshalJSON()
}
