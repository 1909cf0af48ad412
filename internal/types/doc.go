/*
Package types defines the data model shared by the gradebook packages.

# Records

Student holds a name and three subject scores. Total and Average are
derived: they are written only by Student.SetScores, which every mutation
path goes through, and recomputed by Snapshot.Normalize after loading.

StudentTable is the keyed container for students. Ids are unique and the
table keeps insertion order, which is also the order used by the roster
view and by the JSON encoding.

# Accounts

Account pairs a password digest with a Role. The admin account uses the
fixed identity "admin"; every student account uses the id of its student
record.

# Snapshot

Snapshot is what the storage backends load and save:

	{
	  "students": {"S1": {"name": "Alice", "chinese": 90, ...}},
	  "accounts": {"admin": {"password": "...", "role": "admin"}}
	}
*/
package types
