package sync

import "desksync/internal/infrastructure/helpdesk"

// ChangedTickets returns the subset of the remote listing that needs
// re-fetching: entries absent from the local store, or whose remote edited
// timestamp is lexicographically greater than the locally stored one.
//
// Both sides carry ISO-8601 "YYYY-MM-DD HH:MM:SS" strings, so plain string
// comparison orders correctly. That assumption is load-bearing: mixing in
// any other timestamp format would silently break the ordering, which is
// why edited values are stored verbatim and never reformatted.
func ChangedTickets(remote []helpdesk.Ticket, local map[string]string) []helpdesk.Ticket {
	var changed []helpdesk.Ticket
	for _, t := range remote {
		known, ok := local[t.Name]
		if !ok || t.Edited > known {
			changed = append(changed, t)
		}
	}
	return changed
}
