package eventdb

// create a table for module events
const eventTableSchema = `
create table if not exists event (
	seq integer primary key autoincrement,
	ts integer not null,
	name text not null,
	address blob(20),
	account blob(20),
	amount blob,
	data blob
);

CREATE INDEX if not exists eventTsIndex on event(ts);
CREATE INDEX if not exists eventNameIndex on event(name);
CREATE INDEX if not exists eventAccountIndex on event(account);
`

// create a table for token transfers
const transferTableSchema = `
create table if not exists transfer (
	seq integer primary key autoincrement,
	ts integer not null,
	sender blob(20),
	recipient blob(20),
	amount blob
);

CREATE INDEX if not exists transferTsIndex on transfer(ts);
CREATE INDEX if not exists transferSenderIndex on transfer(sender);
CREATE INDEX if not exists transferRecipientIndex on transfer(recipient);
`
