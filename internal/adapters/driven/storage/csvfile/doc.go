// Package csvfile reads and writes scraped case records as CSV.
//
// The column layout matches the dataset produced by earlier scraper runs,
// so existing output.csv files can be ingested unchanged. List-valued
// columns hold literals: interim order URLs use the quoted list form
// understood by domain.ParseURLList, acts and hearings are JSON arrays.
// Files from the original scraper hold hearings as Python repr lists of
// dicts and the first act as "Under Act(s)"/"Under Section(s)" columns;
// both are read. Cells that cannot be decoded are kept raw on the record.
package csvfile
