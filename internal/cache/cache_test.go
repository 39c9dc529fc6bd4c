package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// Sem Redis configurado o cache vira no-op; nenhum caminho pode quebrar.
func TestCacheNuloEhNoOp(t *testing.T) {
	ctx := context.Background()

	var c *Cache
	var destino map[string]any
	require.False(t, c.BuscarMetricas(ctx, 1, &destino))
	c.GuardarMetricas(ctx, 1, map[string]any{"x": 1})
	c.InvalidarMetricas(ctx)

	semCliente := New(nil)
	require.False(t, semCliente.BuscarMetricas(ctx, 1, &destino))
	semCliente.GuardarMetricas(ctx, 1, map[string]any{"x": 1})
	semCliente.InvalidarMetricas(ctx)
}

func TestChaveMetricasUsaPrefixo(t *testing.T) {
	require.Equal(t, PrefixoMetricas+"42", chaveMetricas(42))
}
