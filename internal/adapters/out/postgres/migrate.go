package postgres

import (
	"context"
	"fmt"

	"bolpurmart/internal/adapters/out/postgres/earningsrepo"
	"bolpurmart/internal/adapters/out/postgres/orderrepo"
	"bolpurmart/internal/adapters/out/postgres/outboxrepo"
	"bolpurmart/internal/adapters/out/postgres/partnerrepo"
	"bolpurmart/internal/core/ports"

	"gorm.io/gorm"
)

// notifyFunction signals every committed row change on the channel named after the
// table, with the row id as payload. NOTIFY inside a transaction is delivered on commit.
const notifyFunction = `
CREATE OR REPLACE FUNCTION notify_record_change() RETURNS trigger AS $$
BEGIN
	IF TG_OP = 'DELETE' THEN
		PERFORM pg_notify(TG_TABLE_NAME, OLD.id);
	ELSE
		PERFORM pg_notify(TG_TABLE_NAME, NEW.id);
	END IF;
	RETURN NULL;
END;
$$ LANGUAGE plpgsql`

// Models lists the record store tables.
func Models() []any {
	return []any{
		&orderrepo.OrderDTO{},
		&partnerrepo.PartnerDTO{},
		&earningsrepo.EarningDTO{},
		&outboxrepo.EventDTO{},
	}
}

// Migrate creates or updates the record store schema and installs the change
// notification triggers used by the live query hub.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := db.Exec(notifyFunction).Error; err != nil {
		return fmt.Errorf("notify function: %w", err)
	}

	for _, topic := range []ports.Topic{ports.TopicOrders, ports.TopicPartners} {
		table := string(topic)
		stmts := []string{
			fmt.Sprintf(`DROP TRIGGER IF EXISTS %s_notify ON %s`, table, table),
			fmt.Sprintf(`CREATE TRIGGER %s_notify AFTER INSERT OR UPDATE OR DELETE ON %s
				FOR EACH ROW EXECUTE FUNCTION notify_record_change()`, table, table),
		}
		for _, stmt := range stmts {
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("notify trigger on %s: %w", table, err)
			}
		}
	}

	return nil
}
