// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

// one row per emitted event, keyed by call sequence and index within the call.
const eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER NOT NULL,
	eventIndex INTEGER NOT NULL,
	callTime INTEGER NOT NULL,
	caller BLOB NOT NULL,
	address BLOB NOT NULL,
	name TEXT NOT NULL,
	args TEXT NOT NULL,
	PRIMARY KEY (seq, eventIndex)
);

CREATE INDEX IF NOT EXISTS eventAddressIndex ON event(address);
CREATE INDEX IF NOT EXISTS eventNameIndex ON event(name);
CREATE INDEX IF NOT EXISTS eventTimeIndex ON event(callTime);
`
