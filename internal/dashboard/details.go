package dashboard

import (
	"context"
)

// OpenDetail switches to the detail view and fetches the movie. Without a
// credential it opens the setup panel and makes no request. A successful
// fetch is recorded in history; a failed one leaves an empty detail view.
// When several opens overlap, the most recent one wins.
func (d *Dashboard) OpenDetail(ctx context.Context, id int) {
	if !d.credentials.Available() {
		d.requireSetup()
		return
	}

	d.mu.Lock()
	d.detailSeq++
	seq := d.detailSeq
	d.selectedID = id
	d.detail = nil
	d.detailLoading = true
	d.view = ViewDetails
	d.mu.Unlock()

	detail := d.catalog.Detail(ctx, id)

	d.mu.Lock()
	if seq != d.detailSeq {
		d.mu.Unlock()
		return
	}
	d.detail = detail
	d.detailLoading = false
	if detail == nil {
		d.mu.Unlock()
		return
	}
	d.history.Record(detail.Summary())
	d.mu.Unlock()

	d.persistHistory(ctx)
}

// CloseDetail leaves the detail view for home.
func (d *Dashboard) CloseDetail() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.leaveDetailLocked()
	d.view = ViewHome
}

// leaveDetailLocked drops the open detail; a fetch still in flight is ignored
// when it lands.
func (d *Dashboard) leaveDetailLocked() {
	d.detailSeq++
	d.selectedID = 0
	d.detail = nil
	d.detailLoading = false
}
