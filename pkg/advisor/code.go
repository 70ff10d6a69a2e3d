package advisor

// Rule codes shared across vendor profiles. Codes are stable: configuration
// files, ignore lists and reports refer to them verbatim.
const (
	CodeNotNull            = "NOT_NULL"
	CodeDropColumn         = "DROP_COLUMN"
	CodeDropTable          = "DROP_TABLE"
	CodeRenameColumn       = "RENAME_COLUMN"
	CodeRenameTable        = "RENAME_TABLE"
	CodeAlterColumn        = "ALTER_COLUMN"
	CodeAddUnique          = "ADD_UNIQUE"
	CodeCreateIndex        = "CREATE_INDEX"
	CodeDropIndex          = "DROP_INDEX"
	CodeReindex            = "REINDEX"
	CodeAddUniqueColumn    = "ADD_UNIQUE_COLUMN"
	CodeMultipleTableLocks = "MULTIPLE_TABLE_LOCKS"
)
