// ABOUTME: Account executive graph generation
// ABOUTME: Renders each executive and the clients they own as GraphViz DOT
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/harperreed/clientdesk/models"
)

// statusColors fills client nodes by status; anything else is white.
var statusColors = map[string]string{
	models.StatusActive:   "lightgreen",
	models.StatusPending:  "lightyellow",
	models.StatusInactive: "lightgrey",
}

// GenerateExecGraph creates a graph linking every account executive to their
// clients. Records without an executive hang off an "Unassigned" node.
func GenerateExecGraph(ctx context.Context, records []models.Client) (string, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz: %w", err)
	}
	defer func() {
		if err := gv.Close(); err != nil {
			log.Warn("failed to close graphviz", "err", err)
		}
	}()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer func() {
		if err := graph.Close(); err != nil {
			log.Warn("failed to close graph", "err", err)
		}
	}()

	graph.SetLabel("Account Executives")
	graph.SetRankDir(cgraph.LRRank)

	execNodes := make(map[string]*cgraph.Node)
	for i, c := range records {
		exec := c.AccountExec
		if exec == "" {
			exec = "Unassigned"
		}

		execNode, ok := execNodes[exec]
		if !ok {
			execNode, err = graph.CreateNodeByName(fmt.Sprintf("exec_%d", len(execNodes)))
			if err != nil {
				return "", fmt.Errorf("failed to create exec node: %w", err)
			}
			execNode.SetLabel(exec)
			execNode.SetShape("box")
			execNode.SetStyle("filled")
			execNode.SetFillColor("lightblue")
			execNodes[exec] = execNode
		}

		// Position keeps names unique for records that have not been stored yet
		node, err := graph.CreateNodeByName(fmt.Sprintf("client_%d_%d", c.ID, i))
		if err != nil {
			return "", fmt.Errorf("failed to create client node: %w", err)
		}
		label := c.Company
		if c.Product != "" {
			label += "\n" + c.Product
		}
		if c.Status != "" {
			label += "\n(" + c.Status + ")"
		}
		node.SetLabel(label)
		node.SetShape("ellipse")
		node.SetStyle("filled")
		color, ok := statusColors[c.Status]
		if !ok {
			color = "white"
		}
		node.SetFillColor(color)

		edge, err := graph.CreateEdgeByName(fmt.Sprintf("owns_%d", i), execNode, node)
		if err != nil {
			return "", fmt.Errorf("failed to create edge: %w", err)
		}
		if c.Channel != "" {
			edge.SetLabel(c.Channel)
		}
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}

	return buf.String(), nil
}
