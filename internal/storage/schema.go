package storage

// Schema for the roster and system log tables. Enum checks live at the
// storage layer; the RLS policies are permissive and suitable only for
// development, never production. Statements run one at a time because the
// pool uses the extended protocol.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS soldiers (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL CHECK (name <> ''),
		position    TEXT NOT NULL CHECK (position <> ''),
		sex         TEXT NOT NULL CHECK (sex IN ('Male', 'Female')),
		age         INTEGER NOT NULL CHECK (age > 0 AND age < 120),
		status      TEXT NOT NULL DEFAULT 'Active' CHECK (status IN ('Active', 'Inactive')),
		photo_data  TEXT NOT NULL CHECK (photo_data <> ''),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS system_logs (
		id          BIGSERIAL PRIMARY KEY,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		level       TEXT NOT NULL CHECK (level IN ('ERROR', 'WARN', 'INFO', 'DEBUG')),
		tag         TEXT,
		message     TEXT NOT NULL,
		context     JSONB,
		created_by  TEXT NOT NULL DEFAULT 'system'
	)`,

	`CREATE INDEX IF NOT EXISTS idx_system_logs_created_at ON system_logs (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_system_logs_level ON system_logs (level)`,
	`CREATE INDEX IF NOT EXISTS idx_system_logs_tag ON system_logs (tag)`,

	`ALTER TABLE soldiers ENABLE ROW LEVEL SECURITY`,
	`ALTER TABLE system_logs ENABLE ROW LEVEL SECURITY`,

	// Development-only policies: unrestricted read/write.
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_policies WHERE tablename = 'soldiers' AND policyname = 'soldiers_open') THEN
			CREATE POLICY soldiers_open ON soldiers FOR ALL USING (true) WITH CHECK (true);
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_policies WHERE tablename = 'system_logs' AND policyname = 'system_logs_open') THEN
			CREATE POLICY system_logs_open ON system_logs FOR ALL USING (true) WITH CHECK (true);
		END IF;
	END $$`,
}
