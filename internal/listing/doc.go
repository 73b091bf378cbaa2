// Package listing filters and paginates in-memory result sets.
//
// Nothing here talks to the network: the records, usage and query log views
// fetch once and then narrow what they show with FilterRecords and Pager.
// Both are pure and safe to call on every keystroke.
package listing
