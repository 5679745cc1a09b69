package domain

// StudyDecks returns the compiled-in decks in display order.
func StudyDecks() *Catalog {
	c, err := NewCatalog(
		NewDeck("dbms", "DBMS",
			Card{
				Question: "ACID — What does each letter ensure?",
				Answer:   "Atomicity (all-or-nothing), Consistency (constraints preserved), Isolation (no interference), Durability (commits persist).",
			},
			Card{
				Question: "Dirty vs Non-repeatable vs Phantom reads",
				Answer:   "Dirty: read uncommitted; Non-repeatable: value changes between reads; Phantom: result set changes (new/deleted rows).",
			},
			Card{
				Question: "Strict 2PL — Why helpful?",
				Answer:   "Holds X-locks till commit → prevents cascading aborts, simplifies recovery using WAL.",
			},
			Card{
				Question: "WAL (Write-Ahead Logging) rule",
				Answer:   "Log record must be written before the corresponding data page is flushed to disk.",
			},
		),
		NewDeck("cn", "Computer Networks",
			Card{
				Question: "TCP vs UDP — key differences",
				Answer:   "TCP: connection, reliable, ordered, congestion control. UDP: connectionless, best-effort, low latency.",
			},
			Card{
				Question: "OSI vs TCP/IP layers",
				Answer:   "OSI (7): App, Pres, Sess, Trans, Net, DataLink, Phys. TCP/IP (4): App, Trans, Net, Link.",
			},
			Card{
				Question: "Congestion control (TCP)",
				Answer:   "Slow start, congestion avoidance, fast retransmit, fast recovery using cwnd and ssthresh.",
			},
			Card{
				Question: "Routing: Distance Vector vs Link State",
				Answer:   "DV (Bellman-Ford, periodic updates); LS (Dijkstra, global view).",
			},
		),
		NewDeck("gs", "General Studies",
			Card{
				Question: "Basic structure doctrine (Polity)",
				Answer:   "Supreme Court: Parliament cannot amend the “basic structure” of the Constitution (Kesavananda Bharati, 1973).",
			},
			Card{
				Question: "Fundamental Rights vs DPSP",
				Answer:   "FRs are justiciable; DPSPs are non-justiciable guiding principles for governance.",
			},
			Card{
				Question: "Separation of powers",
				Answer:   "Legislature, Executive, Judiciary with checks and balances; in India, it’s separation of functions, not rigid separation.",
			},
			Card{
				Question: "Finance Commission role",
				Answer:   "Recommends distribution of tax revenues between Centre and States and grants-in-aid.",
			},
		),
	)
	if err != nil {
		// ALLOW-PANIC: compiled-in decks are constant
		panic(err)
	}
	return c
}
