package db

import "context"

// Querier is the full query surface. Services depend on this interface so
// tests can swap the implementation.
type Querier interface {
	// Sessions
	CreateSession(ctx context.Context, arg CreateSessionParams) (Session, error)
	GetSession(ctx context.Context, id int64) (Session, error)
	SessionExists(ctx context.Context, id int64) (bool, error)
	ListRootSessions(ctx context.Context) ([]Session, error)
	ListChildSessions(ctx context.Context, parentID int64) ([]Session, error)
	UpdateSession(ctx context.Context, arg UpdateSessionParams) (Session, error)
	SetSessionPinned(ctx context.Context, id int64, pinned bool) (Session, error)
	AddSessionUsage(ctx context.Context, arg AddSessionUsageParams) (Session, error)
	DeleteSession(ctx context.Context, id int64) error

	// Messages
	CreateMessage(ctx context.Context, arg CreateMessageParams) (Message, error)
	GetMessage(ctx context.Context, id int64) (Message, error)
	MessageExists(ctx context.Context, id int64) (bool, error)
	ListMessagesBySession(ctx context.Context, sessionID int64) ([]Message, error)
	UpdateMessage(ctx context.Context, arg UpdateMessageParams) error
	DeleteMessage(ctx context.Context, id int64) error
	DeleteSessionMessages(ctx context.Context, sessionID int64) error

	// Personas
	CreatePersona(ctx context.Context, arg CreatePersonaParams) (Persona, error)
	GetPersona(ctx context.Context, id int64) (Persona, error)
	GetPersonaByName(ctx context.Context, name string) (Persona, error)
	PersonaExists(ctx context.Context, id int64) (bool, error)
	ListPersonas(ctx context.Context) ([]Persona, error)
	UpdatePersona(ctx context.Context, arg UpdatePersonaParams) (Persona, error)
	DeletePersona(ctx context.Context, id int64) error

	// Providers and the cached model catalog
	CreateProvider(ctx context.Context, arg CreateProviderParams) (Provider, error)
	GetProvider(ctx context.Context, id int64) (Provider, error)
	GetProviderByName(ctx context.Context, name string) (Provider, error)
	ProviderExists(ctx context.Context, id int64) (bool, error)
	ListProviders(ctx context.Context) ([]Provider, error)
	UpdateProvider(ctx context.Context, arg UpdateProviderParams) (Provider, error)
	DeleteProvider(ctx context.Context, id int64) error
	InsertModel(ctx context.Context, arg InsertModelParams) error
	ListProviderModels(ctx context.Context, providerID int64) ([]Model, error)
	DeleteProviderModels(ctx context.Context, providerID int64) error

	// Applications and plugin key-value storage
	CreateApplication(ctx context.Context, arg CreateApplicationParams) (Application, error)
	GetApplication(ctx context.Context, id int64) (Application, error)
	GetApplicationByToken(ctx context.Context, token string) (Application, error)
	ApplicationExists(ctx context.Context, id int64) (bool, error)
	ListApplications(ctx context.Context) ([]Application, error)
	DeleteApplication(ctx context.Context, id int64) error
	SetAppValue(ctx context.Context, appID int64, key, value string) error
	GetAppValue(ctx context.Context, appID int64, key string) (string, error)
	ListAppKeys(ctx context.Context, appID int64) ([]string, error)
	DeleteAppValue(ctx context.Context, appID int64, key string) error
	DeleteAppValues(ctx context.Context, appID int64) error

	// Tool and prompt definitions
	CreateToolDef(ctx context.Context, arg CreateToolDefParams) (ToolDef, error)
	GetToolDef(ctx context.Context, id int64) (ToolDef, error)
	GetToolDefByName(ctx context.Context, name string) (ToolDef, error)
	ToolDefExists(ctx context.Context, id int64) (bool, error)
	ListToolDefs(ctx context.Context) ([]ToolDef, error)
	UpdateToolDef(ctx context.Context, arg UpdateToolDefParams) (ToolDef, error)
	DeleteToolDef(ctx context.Context, id int64) error
	CreatePromptDef(ctx context.Context, arg CreatePromptDefParams) (PromptDef, error)
	GetPromptDef(ctx context.Context, id int64) (PromptDef, error)
	GetPromptDefByName(ctx context.Context, name string) (PromptDef, error)
	PromptDefExists(ctx context.Context, id int64) (bool, error)
	ListPromptDefs(ctx context.Context) ([]PromptDef, error)
	UpdatePromptDef(ctx context.Context, arg UpdatePromptDefParams) (PromptDef, error)
	DeletePromptDef(ctx context.Context, id int64) error

	// Settings documents
	GetSettingsDoc(ctx context.Context, name string) (Setting, error)
	UpsertSettingsDoc(ctx context.Context, name, doc string) error
	DeleteSettingsDoc(ctx context.Context, name string) error
	ListSettingsDocs(ctx context.Context) ([]string, error)

	// Maintenance
	Stats(ctx context.Context) ([]TableCount, error)
}

var _ Querier = (*Queries)(nil)
