package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	PrefixoMetricas = "metricas_dashboard:"
	TTLMetricas     = 5 * time.Minute
)

// Cache guarda métricas de dashboard já computadas. Um Cache nulo (ou sem
// cliente) vira no-op: o dashboard apenas recomputa a cada chamada.
type Cache struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// NewRedisClient conecta no Redis e valida com PING.
func NewRedisClient(host, port, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		Password:     password,
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return rdb, nil
}

func chaveMetricas(usuarioID uint) string {
	return fmt.Sprintf("%s%d", PrefixoMetricas, usuarioID)
}

// BuscarMetricas tenta preencher destino com as métricas em cache.
func (c *Cache) BuscarMetricas(ctx context.Context, usuarioID uint, destino any) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	val, err := c.rdb.Get(ctx, chaveMetricas(usuarioID)).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), destino); err != nil {
		// entrada corrompida é tratada como ausente
		c.rdb.Del(ctx, chaveMetricas(usuarioID))
		return false
	}
	return true
}

// GuardarMetricas grava as métricas com TTL curto; falha só gera log.
func (c *Cache) GuardarMetricas(ctx context.Context, usuarioID uint, valor any) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(valor)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, chaveMetricas(usuarioID), data, TTLMetricas).Err(); err != nil {
		logrus.WithError(err).Warn("falha ao gravar métricas no cache")
	}
}

// InvalidarMetricas descarta todas as métricas em cache. Chamado em qualquer
// mutação de usuário ou contrato, já que o dashboard de um líder depende de
// dados de toda a subárvore.
func (c *Cache) InvalidarMetricas(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	chaves, err := c.rdb.Keys(ctx, PrefixoMetricas+"*").Result()
	if err != nil || len(chaves) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, chaves...).Err(); err != nil {
		logrus.WithError(err).Warn("falha ao invalidar métricas no cache")
	}
}
