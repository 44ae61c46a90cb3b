package provisionservice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/GlebRadaev/gamehost/internal/domain"
	"github.com/google/uuid"
)

type StartupTemplate struct {
	EggID       int
	DockerImage string
	Startup     string
	Environment map[string]string
}

type TemplateBuilder func(order domain.Order) StartupTemplate

type UnsupportedConfigError struct {
	Game   string
	Flavor string
}

func (e *UnsupportedConfigError) Error() string {
	return fmt.Sprintf("unsupported game configuration %s/%s", e.Game, e.Flavor)
}

type Registry struct {
	builders map[string]TemplateBuilder
}

func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]TemplateBuilder)}
}

func templateKey(game, flavor string) string {
	return strings.ToLower(strings.TrimSpace(game)) + "/" + strings.ToLower(strings.TrimSpace(flavor))
}

func (r *Registry) Register(game, flavor string, builder TemplateBuilder) {
	r.builders[templateKey(game, flavor)] = builder
}

// Resolve looks up game/flavor. An empty flavor means "vanilla".
func (r *Registry) Resolve(game, flavor string) (TemplateBuilder, error) {
	if strings.TrimSpace(flavor) == "" {
		flavor = "vanilla"
	}
	builder, ok := r.builders[templateKey(game, flavor)]
	if !ok {
		return nil, &UnsupportedConfigError{Game: game, Flavor: flavor}
	}
	return builder, nil
}

const javaStartup = "java -Xms128M -XX:MaxRAMPercentage=95.0 -Dterminal.jline=false -Dterminal.ansi=true -jar {{SERVER_JARFILE}}"

func versionOr(order domain.Order, fallback string) string {
	if order.Version == "" {
		return fallback
	}
	return order.Version
}

func serverName(order domain.Order) string {
	if order.ServerName == "" {
		return "Server #" + strconv.Itoa(order.ID)
	}
	return order.ServerName
}

func minecraft(egg int, versionVar string, extra map[string]string) TemplateBuilder {
	return func(order domain.Order) StartupTemplate {
		env := map[string]string{
			versionVar:       versionOr(order, "latest"),
			"SERVER_JARFILE": "server.jar",
		}
		for k, v := range extra {
			env[k] = v
		}
		return StartupTemplate{
			EggID:       egg,
			DockerImage: "ghcr.io/pterodactyl/yolks:java_21",
			Startup:     javaStartup,
			Environment: env,
		}
	}
}

func rust(framework string) TemplateBuilder {
	return func(order domain.Order) StartupTemplate {
		return StartupTemplate{
			EggID:       9,
			DockerImage: "ghcr.io/pterodactyl/games:rust",
			Startup: `./RustDedicated -batchmode +server.port {{SERVER_PORT}} +server.identity "rust" ` +
				`+rcon.port {{RCON_PORT}} +rcon.web true +server.hostname "{{HOSTNAME}}" ` +
				`+server.level "{{LEVEL}}" +server.worldsize {{WORLD_SIZE}} +server.maxplayers {{MAX_PLAYERS}} ` +
				`+rcon.password "{{RCON_PASS}}"`,
			Environment: map[string]string{
				"HOSTNAME":    serverName(order),
				"FRAMEWORK":   framework,
				"LEVEL":       "Procedural Map",
				"WORLD_SIZE":  "3000",
				"MAX_PLAYERS": "50",
				"RCON_PORT":   "28016",
				"RCON_PASS":   uuid.NewString(),
			},
		}
	}
}

func terraria(egg int, image, startup, versionVar string) TemplateBuilder {
	return func(order domain.Order) StartupTemplate {
		return StartupTemplate{
			EggID:       egg,
			DockerImage: image,
			Startup:     startup,
			Environment: map[string]string{
				versionVar:    versionOr(order, "latest"),
				"WORLD_NAME":  "world",
				"WORLD_SIZE":  "1",
				"MAX_PLAYERS": "8",
			},
		}
	}
}

func valheim(order domain.Order) StartupTemplate {
	return StartupTemplate{
		EggID:       8,
		DockerImage: "ghcr.io/parkervcp/steamcmd:debian",
		Startup: `./valheim_server.x86_64 -nographics -batchmode -name "{{SERVER_NAME}}" ` +
			`-port {{SERVER_PORT}} -world "{{WORLD}}" -password "{{PASSWORD}}" -public {{PUBLIC_SERVER}}`,
		Environment: map[string]string{
			"SERVER_NAME":   serverName(order),
			"WORLD":         "Dedicated",
			"PASSWORD":      uuid.NewString()[:8],
			"PUBLIC_SERVER": "1",
			"SRCDS_APPID":   "896660",
		},
	}
}

// DefaultRegistry holds every game and flavor the shop sells.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("minecraft", "paper", minecraft(1, "MINECRAFT_VERSION", map[string]string{"BUILD_NUMBER": "latest"}))
	r.Register("minecraft", "vanilla", minecraft(2, "VANILLA_VERSION", nil))
	r.Register("minecraft", "forge", minecraft(3, "MC_VERSION", map[string]string{"BUILD_TYPE": "recommended"}))
	r.Register("minecraft", "fabric", minecraft(4, "MC_VERSION", map[string]string{
		"FABRIC_VERSION": "latest",
		"LOADER_VERSION": "latest",
	}))
	r.Register("minecraft", "purpur", minecraft(5, "MINECRAFT_VERSION", map[string]string{"BUILD_NUMBER": "latest"}))
	r.Register("valheim", "vanilla", valheim)
	r.Register("rust", "vanilla", rust("vanilla"))
	r.Register("rust", "oxide", rust("oxide"))
	r.Register("terraria", "vanilla", terraria(10, "ghcr.io/parkervcp/yolks:debian",
		"./TerrariaServer.bin.x86_64 -config serverconfig.txt", "TERRARIA_VERSION"))
	r.Register("terraria", "tmodloader", terraria(11, "ghcr.io/parkervcp/yolks:dotnet_8",
		"./start-tModLoaderServer.sh -config serverconfig.txt", "TMOD_VERSION"))
	return r
}
