// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

package kubevirt

import (
	"fmt"

	"k8s.io/client-go/tools/clientcmd"
	kubecli "kubevirt.io/client-go/kubecli"
)

// Client resolves virtual machines and opens their serial consoles.
type Client struct {
	virt kubecli.KubevirtClient
}

// NewClient creates a client from the given kubeconfig path. An empty path
// uses the default loading rules (KUBECONFIG, ~/.kube/config).
func NewClient(kubeconfig string) (*Client, error) {
	var config clientcmd.ClientConfig
	if kubeconfig != "" {
		config = clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
			&clientcmd.ClientConfigLoadingRules{ExplicitPath: kubeconfig},
			&clientcmd.ConfigOverrides{},
		)
	} else {
		config = clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
			clientcmd.NewDefaultClientConfigLoadingRules(),
			&clientcmd.ConfigOverrides{},
		)
	}

	restConfig, err := config.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("client config: %w", err)
	}

	virt, err := kubecli.GetKubevirtClientFromRESTConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("kubevirt client: %w", err)
	}

	return &Client{virt: virt}, nil
}
