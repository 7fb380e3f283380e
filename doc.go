// Package hwseed derives a deterministic hierarchy of 32-bit seeds and turns
// them into plausible hardware identities: serial numbers, MAC addresses,
// UUIDs and bounded numeric values for CPU, GPU, motherboard, memory, disk,
// monitor and network components.
//
// Identical persisted state always yields identical identities, on any
// machine and after any number of restarts. Changing the master seed changes
// every derived identity at once.
//
// # Overview
//
// A [Seeder] owns one [Record] holding a master seed, a session seed, a
// hardware seed, the creation time and a boot count. On first use the record
// is loaded from a [Store], or created from the clock and an [EntropySource]
// when none exists. Each component seed is derived from the master and
// hardware seeds by [DeriveComponentSeed]; identity values are then drawn by
// the pure generators [GenerateDeterministicValue], [GenerateSerial],
// [GenerateMacAddress] and [GenerateUuid].
//
// # Quick Start
//
//	s := hwseed.New().WithStore(store)
//	if err := s.Initialize(ctx); err != nil {
//		log.Printf("running without persistence: %v", err)
//	}
//
//	serial := s.Serial(hwseed.Disk, 20, hwseed.CharsetAlphanumeric)
//	mac := s.MAC(hwseed.Network)
//
// Reproducible identities across machines come from [Seeder.SetUserSeed]:
//
//	_ = s.SetUserSeed(ctx, 0xDEADBEEF)
//
// # Stores
//
// [MemoryStore] is the default. Durable backends live in subpackages:
//
//   - store/file: one file written atomically
//   - store/sqlite: a single-row table in an embedded SQLite database
//   - store/postgres: a single-row table in PostgreSQL
//   - store/s3: one object in an S3 compatible bucket
//
// Store failures never stop the seeder. [Seeder.Initialize] falls back to an
// in-memory record and reports an error matching [ErrInitialization].
//
// # Hardware Entropy
//
// [HardwareEntropy] folds host identifiers (CPU, board serial, system UUID,
// MAC addresses, disk serials) into the hardware seed of a new record.
// [HardwareEntropy.VMFriendly] restricts it to the CPU and system UUID. Tests
// use [FixedEntropy] or inject a [CommandExecutor] with
// [HardwareEntropy.WithExecutor].
//
// # Thread Safety
//
// After configuration a [Seeder] is safe for concurrent use. Mutations are
// serialized; readers see a complete, atomically published snapshot and never
// a mix of old and new component seeds.
//
// # Compatibility
//
// Derived values are part of the persisted contract. [MixVersion] names the
// mixing function and component tags in use; any change to either bumps it.
//
// # CLI Tool
//
// cmd/hwseed prints the seeds and identities of one host:
//
//	hwseed
//	hwseed -store sqlite -path /var/lib/hwseed.db -json
//	hwseed -seed 0xDEADBEEF -component disk,network
//	hwseed -record -metrics
//	hwseed -version.long
package hwseed
