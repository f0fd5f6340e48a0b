package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/coffer/internal/adapters/fs"
	"github.com/trebuchet-org/coffer/internal/adapters/interactive"
	"github.com/trebuchet-org/coffer/internal/adapters/repository/memory"
	"github.com/trebuchet-org/coffer/internal/adapters/seed"
	"github.com/trebuchet-org/coffer/internal/adapters/signer"
	"github.com/trebuchet-org/coffer/internal/adapters/storage"
	"github.com/trebuchet-org/coffer/internal/adapters/system"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

// StoreSet provides the snapshot backend and the in-process store on top of it
var StoreSet = wire.NewSet(
	storage.NewSnapshotStore,

	memory.NewStore,
	wire.Bind(new(usecase.UnitOfWork), new(*memory.Store)),
	wire.Bind(new(usecase.StateStore), new(*memory.Store)),
	wire.Bind(new(usecase.TreasuryRepository), new(*memory.Store)),
	wire.Bind(new(usecase.ProposalRepository), new(*memory.Store)),
	wire.Bind(new(usecase.PolicyRepository), new(*memory.Store)),
	wire.Bind(new(usecase.TransactionRepository), new(*memory.Store)),
	wire.Bind(new(usecase.UserRepository), new(*memory.Store)),
	wire.Bind(new(usecase.ExpenseRepository), new(*memory.Store)),
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewProjectConfigAdapter,
	wire.Bind(new(usecase.ProjectConfigWriter), new(*fs.ProjectConfigAdapter)),

	seed.NewLoader,
	wire.Bind(new(usecase.SeedSource), new(*seed.Loader)),
)

// SystemSet provides clock, identity and signature implementations
var SystemSet = wire.NewSet(
	system.NewClock,
	wire.Bind(new(usecase.Clock), new(*system.Clock)),

	system.NewUUIDGenerator,
	wire.Bind(new(usecase.IDGenerator), new(*system.UUIDGenerator)),

	signer.NewKeccakSigner,
	wire.Bind(new(usecase.Signer), new(*signer.KeccakSigner)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.Selector), new(*interactive.SelectorAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	StoreSet,
	FSSet,
	SystemSet,
	InteractiveSet,
)
