// Package wealth provides the data model and the arithmetic behind a personal
// finance dashboard. It is deliberately small and free of I/O: everything
// around it (storage, import, advice generation, presentation) hands it raw
// JSON and gets well formed records or totals back.
//
// The core functionalities include:
//   - Aggregation: total assets, total liabilities and net worth of a Record,
//     always recomputed from its line items.
//   - Reconciliation: a deep merge of a partial or foreign record against the
//     default record shape, over an explicit tagged document tree.
//   - Selection: the policy that decides which record becomes the active
//     record of a session, recovering from absent, malformed or placeholder
//     data by falling back to the bundled sample.
//
// No currency conversion is ever performed. Line items are summed as if they
// were all expressed in the profile currency.
package wealth
