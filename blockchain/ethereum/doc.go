// Copyright (c) 2020 - for information on the respective copyright owner
// see the NOTICE file and/or the repository at
// https://github.com/direct-state-transfer/escrow-sdk-go
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ethereum provides the transaction signer and the wallet backend
// for the ethereum blockchain platform and the networks that share its
// transaction format (BSC, Polygon and Avalanche C-Chain). The wallet
// backend is implemented in internal/implementation, as it is shared
// between this package and the ethereum test helper package
// "./ethereumtest".
//
// In addition to the intended functionality, this package is also
// structured to isolate the imports from "go-ethereum" project, which is
// licensed under LGPL. The exported methods use types in the root package
// of escrow-sdk-go, so that the other packages in the sdk can use ethereum
// related functionality only through the interfaces defined there.
package ethereum
