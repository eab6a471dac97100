package mysql

// -----------------------------------------------------------------------------
// READ QUERIES (the site never writes)
// -----------------------------------------------------------------------------

// The collections table is the registry of names that exist; a name missing
// there is NotFound even if stray item rows reference it.
const collectionExistsSQL = `
SELECT 1 FROM collections WHERE name = ?
`

const countItemsSQL = `
SELECT COUNT(*) FROM collection_items WHERE collection = ?
`

// One page only; the page size is bound as the LIMIT.
const listItemsSQL = `
SELECT
  id,
  data,
  created_at,
  updated_at
FROM collection_items
WHERE collection = ?
ORDER BY sort_order, created_at, id
LIMIT ?
`
