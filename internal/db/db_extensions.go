package db

// GetDBTX exposes the underlying connection so services can run
// ad-hoc statements alongside the generated queries.
func (q *Queries) GetDBTX() DBTX {
	return q.db
}
