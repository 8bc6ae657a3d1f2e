package handle

// QueryResult is a single-slot buffer filled by Query. Each call
// overwrites the previous contents, reusing the IDs backing array when it
// is large enough, so a result must not be read while another Query is
// writing into it.
type QueryResult struct {
	// Count is the number of ids found, or -1 if the last query failed.
	Count int32
	IDs   []int64
}

func NewQueryResult() *QueryResult {
	return &QueryResult{}
}

func (r *QueryResult) set(ids []int64) {
	r.IDs = append(r.IDs[:0], ids...)
	r.Count = int32(len(r.IDs))
}

func (r *QueryResult) fail() {
	r.IDs = r.IDs[:0]
	r.Count = -1
}

// Release drops the buffer. The result can be reused afterwards.
func (r *QueryResult) Release() {
	r.IDs = nil
	r.Count = 0
}
