package mysqlparser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func texts(statements []Statement) []string {
	var out []string
	for _, stmt := range statements {
		if stmt.Empty {
			continue
		}
		out = append(out, strings.TrimSpace(stmt.Text))
	}
	return out
}

func TestSplitSQL(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		want      []string
	}{
		{
			name:      "plain statements",
			statement: "SELECT * FROM t1 WHERE c1 = 1; SELECT * FROM t2;",
			want:      []string{"SELECT * FROM t1 WHERE c1 = 1;", "SELECT * FROM t2;"},
		},
		{
			name:      "last statement without semicolon",
			statement: "ALTER TABLE `a` DROP COLUMN `b`;\nDROP TABLE `c`",
			want:      []string{"ALTER TABLE `a` DROP COLUMN `b`;", "DROP TABLE `c`"},
		},
		{
			name:      "semicolons in strings and comments",
			statement: "UPDATE `t` SET `c` = 'a;b'; -- trailing; comment\nSELECT 1;",
			want:      []string{"UPDATE `t` SET `c` = 'a;b';", "-- trailing; comment\nSELECT 1;"},
		},
		{
			name:      "transaction markers are statements",
			statement: "BEGIN;\nALTER TABLE `t` ADD COLUMN `c` int NULL;\nCOMMIT;",
			want:      []string{"BEGIN;", "ALTER TABLE `t` ADD COLUMN `c` int NULL;", "COMMIT;"},
		},
		{
			name:      "begin work",
			statement: "BEGIN WORK; SELECT 1; COMMIT;",
			want:      []string{"BEGIN WORK;", "SELECT 1;", "COMMIT;"},
		},
		{
			name: "procedure body",
			statement: `CREATE PROCEDURE my_procedure (IN id INT, OUT name VARCHAR(255))
BEGIN
  SELECT name INTO name FROM users WHERE id = id;
END; SELECT * FROM t2;`,
			want: []string{
				`CREATE PROCEDURE my_procedure (IN id INT, OUT name VARCHAR(255))
BEGIN
  SELECT name INTO name FROM users WHERE id = id;
END;`,
				"SELECT * FROM t2;",
			},
		},
		{
			name: "functions named like control flow",
			statement: `CREATE PROCEDURE my_procedure (IN id INT, OUT name VARCHAR(255))
BEGIN
	SELECT IF(id = 1, 'one', 'other') INTO name FROM users;
END; SELECT REPEAT('123', a) FROM t2;`,
			want: []string{
				`CREATE PROCEDURE my_procedure (IN id INT, OUT name VARCHAR(255))
BEGIN
	SELECT IF(id = 1, 'one', 'other') INTO name FROM users;
END;`,
				"SELECT REPEAT('123', a) FROM t2;",
			},
		},
		{
			name:      "case expression",
			statement: "UPDATE `t` SET `c` = CASE WHEN `a` THEN 1 ELSE 2 END; SELECT 1;",
			want:      []string{"UPDATE `t` SET `c` = CASE WHEN `a` THEN 1 ELSE 2 END;", "SELECT 1;"},
		},
		{
			name: "custom delimiter",
			statement: `DELIMITER ;;
CREATE PROCEDURE dorepeat(p1 INT)
BEGIN
	DECLARE x INT;
	SET x = 0;
	label1: WHILE x < p1 DO
		SET x = x + 1;
	END WHILE label1;
END;;
DELIMITER ;
CALL dorepeat(1000);
SELECT x;
`,
			want: []string{
				`CREATE PROCEDURE dorepeat(p1 INT)
BEGIN
	DECLARE x INT;
	SET x = 0;
	label1: WHILE x < p1 DO
		SET x = x + 1;
	END WHILE label1;
END;`,
				"CALL dorepeat(1000);",
				"SELECT x;",
			},
		},
		{
			name:      "empty script",
			statement: "  \n-- nothing here\n",
			want:      nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			list, err := SplitSQL(tc.statement)
			require.NoError(t, err)
			require.Equal(t, tc.want, texts(list))
		})
	}
}

func TestSplitSQLLines(t *testing.T) {
	list, err := SplitSQL("SELECT 1;\n\nALTER TABLE `t`\n  DROP COLUMN `c`;")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, 1, list[0].Line)
	require.Equal(t, 3, list[1].Line)
}

func TestExtractDelimiter(t *testing.T) {
	d, err := ExtractDelimiter("DELIMITER $$")
	require.NoError(t, err)
	require.Equal(t, "$$", d)

	d, err = ExtractDelimiter("  delimiter ;")
	require.NoError(t, err)
	require.Equal(t, ";", d)

	_, err = ExtractDelimiter("SELECT 1")
	require.Error(t, err)
}
