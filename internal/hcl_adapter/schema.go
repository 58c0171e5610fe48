package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// settingsRoot decodes the top-level blocks of a settings file.
type settingsRoot struct {
	Server   *ServerBlock   `hcl:"server,block"`
	CORS     *CORSBlock     `hcl:"cors,block"`
	Log      *LogBlock      `hcl:"log,block"`
	Realtime *RealtimeBlock `hcl:"realtime,block"`
}

// ServerBlock is the HCL schema of the `server` block.
type ServerBlock struct {
	ListenAddr      *string `hcl:"listen_addr,optional"`
	ReadTimeout     *string `hcl:"read_timeout,optional"`
	WriteTimeout    *string `hcl:"write_timeout,optional"`
	ShutdownTimeout *string `hcl:"shutdown_timeout,optional"`
	MaxBodyBytes    *int64  `hcl:"max_body_bytes,optional"`
}

// CORSBlock is the HCL schema of the `cors` block.
type CORSBlock struct {
	AllowedOrigins []string `hcl:"allowed_origins"`
}

// LogBlock is the HCL schema of the `log` block.
type LogBlock struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

// RealtimeBlock is the HCL schema of the `realtime` block.
type RealtimeBlock struct {
	Enabled *bool `hcl:"enabled,optional"`
}

// graphRoot decodes the top-level blocks of a graph file.
type graphRoot struct {
	Nodes []*NodeBlock `hcl:"node,block"`
	Edges []*EdgeBlock `hcl:"edge,block"`
}

// NodeBlock is a `node "<id>" { ... }` block. Every attribute in the body is
// carried into the node's payload.
type NodeBlock struct {
	ID     string   `hcl:"id,label"`
	Remain hcl.Body `hcl:",remain"`
}

// EdgeBlock is an `edge { source = "..." target = "..." }` block.
type EdgeBlock struct {
	Source string `hcl:"source"`
	Target string `hcl:"target"`
}
