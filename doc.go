// Package finsheet synchronizes a personal budget dataset into spreadsheet
// tabs: budget categories and transactions from a Dropbox-hosted YNAB
// snapshot, currency and inflation reference series from public statistical
// endpoints, and a date-by-ticker matrix of security close prices from a
// market-data provider.
//
// The heart of the package is the price sync engine. It treats one worksheet
// as a sparse append-only time series (rows are dates, columns are tickers),
// reads it once as ground truth, plans the minimal fetch per ticker, merges
// the fetched prices into the date axis, and writes the result back as a
// single batched patch. Each run is a read-reconcile-write transaction; the
// spreadsheet itself is the only durable store.
//
// Subpackages hold the external collaborators: gsheets (spreadsheet
// backend), dropbox (budget source), yahoo (market data), mnb and ksh
// (reference series). The engine itself only sees the interfaces declared
// here.
package finsheet
